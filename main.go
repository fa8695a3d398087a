package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuannh982/indexed-map/registry"

	log "github.com/sirupsen/logrus"
)

type transform struct {
	X, Y   int
	DX, DY int
}

func main() {
	log.SetLevel(log.DebugLevel)
	transforms := registry.NewRegistry[transform]("transforms", 8)
	must(transforms.Register("PositionX", transform{X: 12, DX: 1}))
	must(transforms.Register("PositionY", transform{X: 1, DY: 1}))
	transforms.Replace("PositionZ", transform{X: 42})
	transforms.Replace("PositionZ", transform{X: 69, DX: -1})
	if c, ok := transforms.Component("PositionX"); ok {
		c.X = 72
	}
	must(transforms.Unregister("PositionY"))

	done := make(chan struct{})
	go hookShutdownSignal(done)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sum := 0
			err := transforms.Tick(func(_ int, c *transform) error {
				c.X += c.DX
				c.Y += c.DY
				sum += c.X
				return nil
			})
			if err != nil {
				log.Error("frame failed ", err)
			}
			log.WithFields(log.Fields{"frame": transforms.Frame(), "sum": sum}).Info("frame")
		case <-done:
			transforms.Reset()
			return
		}
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func hookShutdownSignal(done chan struct{}) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	close(done)
}
