package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

type appNameHook struct {
	appName string
}

func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = h.appName
	return nil
}

// Init configures the shared logger. An empty or unknown level falls back to info.
func Init(appName, level string) {
	InitWithOutput(appName, level, os.Stdout)
}

func InitWithOutput(appName, level string, out io.Writer) {
	Logger.SetOutput(out)

	lvlStr := strings.ToLower(strings.TrimSpace(level))
	if lvlStr == "" {
		lvlStr = "info"
	}
	lvl, err := logrus.ParseLevel(lvlStr)
	if err != nil {
		Logger.Warnf("invalid LOG_LEVEL %q, defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)

	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	Logger.ReplaceHooks(make(logrus.LevelHooks))
	Logger.AddHook(&appNameHook{appName})
}

// Loan returns an entry carrying the standard loan transition fields.
func Loan(loanID, assetID string) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"loan_id":  loanID,
		"asset_id": assetID,
	})
}
