package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger writing to stdout. main swaps the default
// for a MultiHandler once the database handler is available.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
