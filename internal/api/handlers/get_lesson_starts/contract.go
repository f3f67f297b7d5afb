package get_lesson_starts

import (
	"context"

	getLessonStarts "github.com/m04kA/SMC-SchoolBooking/internal/usecase/get_lesson_starts"
)

type GetLessonStartsUseCase interface {
	Execute(ctx context.Context, req *getLessonStarts.Request) (*getLessonStarts.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
