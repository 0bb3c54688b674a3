package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/testops-io/testops-go/pkg/config"
	"github.com/testops-io/testops-go/pkg/core"
	"github.com/testops-io/testops-go/pkg/logging"
	"github.com/testops-io/testops-go/pkg/schema"
	"github.com/testops-io/testops-go/pkg/validation"
)

func main() {
	// Defaults come from TESTOPS_* env vars (or a .env file)
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(os.Stderr, "testops-client")

	queryValidator, err := validation.NewQueryValidator(schema.SDL, logger)
	if err != nil {
		log.Fatal(err)
	}

	executor, err := core.NewExecutor(cfg, queryValidator, core.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	resolver, err := schema.NewResolver(executor)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	data, err := resolver.TestData(ctx, "smoke")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Fetched %d test data sets\n", len(data))

	for _, d := range data {
		fmt.Printf("%s: %s (valid %s - %s)\n", d.ID, d.Name, d.ValidFrom, d.ValidTo)
	}
}
