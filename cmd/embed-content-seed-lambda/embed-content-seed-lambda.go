package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/looker-open-source/embed-content-seed/internal/seed"
	"github.com/looker-open-source/embed-content-seed/pkg/interop"
)

type ContentSeedResult struct {
  Success           bool
  Message           error
  Report            *seed.Report
}

func HandleRequest(ctx context.Context) (ContentSeedResult, error) {
  i, err := interop.NewInteroperability()
  if err != nil {
    retErr := fmt.Errorf("failed to create interop: %s", err)
    return ContentSeedResult{false, retErr, nil}, retErr
  }

  defer i.Shutdown()

  seeder, err := seed.New(i)
  if err != nil {
    retErr := fmt.Errorf("seed failed: %s", err)
    return ContentSeedResult{false, retErr, nil}, retErr
  }

  report, err := seeder.Seed(ctx)
  if err != nil {
    retErr := fmt.Errorf("seed failed: %s", err)
    return ContentSeedResult{false, retErr, nil}, retErr
  }

  if report.Failed() {
    retErr := fmt.Errorf("seed completed with item failures")
    return ContentSeedResult{false, retErr, report}, retErr
  }

  return ContentSeedResult{true, nil, report}, nil
}

func main() {
  lambda.Start(HandleRequest)
}
