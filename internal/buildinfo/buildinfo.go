package buildinfo

import (
	"fmt"

	"go.uber.org/zap"
)

// Значения задаются при сборке через -ldflags "-X ..."
var (
	BuildVersion = "N/A"
	BuildDate    = "N/A"
	BuildCommit  = "N/A"
)

// String возвращает версию в одну строку для --version
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", BuildVersion, BuildCommit, BuildDate)
}

// Fields возвращает сведения о сборке для записи в лог при старте
func Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", BuildVersion),
		zap.String("commit", BuildCommit),
		zap.String("date", BuildDate),
	}
}
