package util

import (
	"log"
	"time"
)

// Trace logs the elapsed time of a region:
//
//	defer util.Trace("batch run")()
func Trace(name string) func() {
	start := time.Now()
	return func() {
		log.Printf("%s took %s", name, time.Since(start))
	}
}
