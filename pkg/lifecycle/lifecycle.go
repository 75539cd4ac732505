// Package lifecycle pkg/lifecycle/lifecycle.go runs a long-lived service
// until it fails or the process receives a shutdown signal.
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	ShutdownTimeout = 10 * time.Second
)

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// Run starts the service and blocks until it errors, the context is
// canceled, or SIGINT/SIGTERM arrives; it then stops the service under a
// shutdown timeout.
func Run(ctx context.Context, name string, svc Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", name)

	errChan := make(chan error, 1)

	go func() {
		if err := svc.Start(ctx); err != nil {
			select {
			case errChan <- err:
			default:
				log.Printf("Service error: %v", err)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down %s", sig, name)
	case err := <-errChan:
		log.Printf("Service %s failed: %v", name, err)

		return shutdown(svc, fmt.Errorf("service failed: %w", err))
	case <-ctx.Done():
		log.Printf("Context canceled, shutting down %s", name)
	}

	cancel()

	return shutdown(svc, nil)
}

func shutdown(svc Service, cause error) error {
	stopCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := svc.Stop(stopCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)

		if cause == nil {
			return err
		}
	}

	return cause
}
