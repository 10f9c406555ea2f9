package testutil

import (
	"context"

	"github.com/phenixmation/payables/internal/types"
)

func SetupContext() context.Context {
	return types.SetRequestID(context.Background(), types.GenerateUUID())
}
