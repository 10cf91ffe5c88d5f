package notifier

// Logger интерфейс для логирования в пакете notifier
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
