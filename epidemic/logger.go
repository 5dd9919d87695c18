package epidemic

import (
	"io"
	"log"
	"os"
)

// Log is the package-level logger, following the teacher's
// (Harrizontal dispatchserver) dispatchsim/logger.go pattern of a single
// exported *log.Logger that every component writes progress and warning
// lines to. It defaults to stderr so the package is usable without setup;
// callers that want a log file call InitFileLogger.
var Log = log.New(os.Stderr, "", log.LstdFlags)

// InitFileLogger redirects Log to the given file path, truncating it,
// mirroring the teacher's initLogger which creates a fresh dispatcher.log
// per run.
func InitFileLogger(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	Log = log.New(f, "", log.LstdFlags|log.Lshortfile)
	Log.Println("LogFile : " + path)
	return nil
}

// SetLogOutput redirects Log to an arbitrary writer, used by tests to
// silence log output.
func SetLogOutput(w io.Writer) {
	Log = log.New(w, "", log.LstdFlags)
}
