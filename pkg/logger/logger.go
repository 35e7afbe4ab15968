package logger

import (
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus logger
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a new logger instance
func NewLogger(serviceName string) *Logger {
	log := logrus.New()

	// Set JSON formatter
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	// Set output
	log.SetOutput(os.Stdout)

	// Set log level from environment
	level := os.Getenv("LOG_LEVEL")
	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	// Add default fields
	log = log.WithField("service", serviceName).Logger

	return &Logger{Logger: log}
}

// Entry is a logrus entry carrying the domain field helpers, so they can
// be chained with each other and with WithError/WithField.
type Entry struct {
	*logrus.Entry
}

// WithUserID adds user ID to logger
func (l *Logger) WithUserID(userID uint64) *Entry {
	return &Entry{l.WithField("user_id", userID)}
}

// WithChatID adds chat ID to logger
func (l *Logger) WithChatID(chatID int64) *Entry {
	return &Entry{l.WithField("chat_id", chatID)}
}

// WithReminderID adds reminder ID to logger
func (l *Logger) WithReminderID(reminderID uint64) *Entry {
	return &Entry{l.WithField("reminder_id", reminderID)}
}

// WithUserID adds user ID to the entry
func (e *Entry) WithUserID(userID uint64) *Entry {
	return &Entry{e.WithField("user_id", userID)}
}

// WithChatID adds chat ID to the entry
func (e *Entry) WithChatID(chatID int64) *Entry {
	return &Entry{e.WithField("chat_id", chatID)}
}

// WithReminderID adds reminder ID to the entry
func (e *Entry) WithReminderID(reminderID uint64) *Entry {
	return &Entry{e.WithField("reminder_id", reminderID)}
}

// statusRecorder captures the response status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware returns an HTTP middleware that logs incoming requests
func HTTPMiddleware(log *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(logrus.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      rec.status,
				"duration_ms": time.Since(start).Milliseconds(),
			}).Info("HTTP request")
		})
	}
}
