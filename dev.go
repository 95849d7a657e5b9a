package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/Princic-1837592/advent-of-code-sub001/intcode"
)

// devMode watches progFile and loads it afresh each time it changes.
// Without a debugger each load is run to completion and its output logged.
// With one, the program and its symbols are loaded into the debugger, and
// devMode returns when the debugger exits.
func devMode(progFile string, input []int64, debug bool) error {
	progFile = filepath.Clean(progFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(progFile)); err != nil {
		return err
	}

	var (
		d    *debugger
		done = make(chan error, 1)
	)
	if debug {
		d = newDebugger()
		log.SetPrefix("")
		log.SetOutput(d.log)
		go func() {
			err := d.Run()
			log.SetOutput(os.Stderr)
			log.SetPrefix("intcode: ")
			done <- err
		}()
	}

	run := time.After(1 * time.Millisecond)
	for {
		select {
		case <-run:
			m, err := loadFile(progFile)
			if err != nil {
				log.Printf("dev: %v", err)
				break
			}
			m.Push(input...)
			if d == nil {
				log.Printf("dev: run %s", filepath.Base(progFile))
				devRun(m)
				break
			}
			syms, err := parseSymbols(progFile)
			if err != nil {
				log.Printf("dev: reading symbols: %v", err)
			}
			log.Printf("dev: load %s", filepath.Base(progFile))
			d.load(m, syms)
		case ev := <-watcher.Event:
			if (ev.Name == progFile || ev.Name == progFile+".sym") && !ev.IsAttrib() {
				run = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			log.Printf("dev: watcher: %v", err)
		case err := <-done:
			return err
		}
	}
}

func devRun(m *intcode.Machine) {
	err := m.RunUntilComplete()
	log.Printf("dev: output %v", m.Output())
	if err != nil {
		log.Printf("dev: %v", err)
		return
	}
	log.Print("dev: halted")
}
