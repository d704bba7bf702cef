package providers

type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyWarning NotifyKind = "warning"
	NotifyError   NotifyKind = "error"
)

// NotifierInterface is the user-visible feedback sink. Network and conflict
// failures are always surfaced through it, never swallowed.
type NotifierInterface interface {
	Notify(kind NotifyKind, message string)
}

// LogNotifier is the default sink for headless runs: notifications land on
// the app log channel at a level matching their kind.
type LogNotifier struct {
	logger Logger
}

func NewNotifierProvider(logger Logger) NotifierInterface {
	return &LogNotifier{logger: logger}
}

func (ln *LogNotifier) Notify(kind NotifyKind, message string) {
	switch kind {
	case NotifyError:
		ln.logger.Errorf(TypeApp, "notify: %s", message)
	case NotifyWarning:
		ln.logger.Warnf(TypeApp, "notify: %s", message)
	default:
		ln.logger.Infof(TypeApp, "notify: %s", message)
	}
}
