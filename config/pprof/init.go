package pprof

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/sirupsen/logrus"
)

// Load 在独立端口上暴露 pprof，addr 为空时不启动
func Load(addr string) {
	if addr == "" {
		return
	}
	go func() {
		logrus.Infof("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logrus.Errorf("pprof server stopped: %v", err)
		}
	}()
}
