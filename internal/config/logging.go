package config

import (
	"io"
	"log"
	"os"

	"github.com/natefinch/lumberjack"
)

// SetupLogging sets the standard logger flags and, when path is not empty,
// tees log output into a rotating file. The returned closer flushes it.
func SetupLogging(path string) io.Closer {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	if path == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}
	logger := &lumberjack.Logger{
		Filename: path,
		MaxSize:  10,
		Compress: true,
	}
	log.SetOutput(io.MultiWriter(logger, os.Stdout))
	return logger
}
