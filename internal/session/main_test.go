package session

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/maze"
)

func TestMain(m *testing.M) {
	for _, l := range []*logrus.Logger{Log, maze.Log} {
		l.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}
	m.Run()
}
