package main

import (
	stdlog "log"

	log "github.com/sirupsen/logrus"
)

// newErrorLog routes net/http's internal errors through logger
func newErrorLog(logger *log.Logger) *stdlog.Logger {
	return stdlog.New(logger.WriterLevel(log.WarnLevel), "", 0)
}
