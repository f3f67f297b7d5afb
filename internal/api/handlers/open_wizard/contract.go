package open_wizard

import (
	"context"

	openWizard "github.com/m04kA/SMC-SchoolBooking/internal/usecase/open_wizard"
)

type OpenWizardUseCase interface {
	Execute(ctx context.Context, req *openWizard.Request) (*openWizard.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
