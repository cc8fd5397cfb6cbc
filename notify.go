package camprobe

import (
	"fmt"
	"log/slog"

	"github.com/abihf/camprobe/capture"
	"github.com/coreos/go-systemd/v22/daemon"
)

var sdNotify = daemon.SdNotify

func notify(log *slog.Logger, state string) {
	if _, err := sdNotify(false, state); err != nil {
		log.Debug("Can not notify service manager", "state", state, "error", err)
	}
}

func notifyReady(log *slog.Logger) {
	notify(log, daemon.SdNotifyReady)
}

func notifyStatus(log *slog.Logger, rep capture.Report) {
	notify(log, fmt.Sprintf("STATUS=Average frametime %.2fms@%d", rep.AverageMillis(), rep.Total))
}

func notifyStopping(log *slog.Logger) {
	notify(log, daemon.SdNotifyStopping)
}
