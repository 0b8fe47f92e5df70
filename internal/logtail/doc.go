// Package logtail reads the tail of the hurricane log file and parses the
// key=value records written by slog's text handler.
//
// Read keeps only the last N lines in a ring buffer, so large log files are
// scanned once without being held in memory. Parse and Filter turn those
// lines into entries the dashboard's log view and the "logs" command can
// color and filter by level.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, e := range logtail.Filter(lines, slog.LevelWarn) {
//		fmt.Println(e.Level, e.Message)
//	}
package logtail
