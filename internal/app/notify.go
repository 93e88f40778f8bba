package app

import (
	"github.com/coreos/go-systemd/v22/daemon"

	"specsync/pkg/logging"
)

// notifier reports lifecycle transitions to the service manager.
type notifier interface {
	Ready()
	Stopping()
}

type systemdNotifier struct{}

func (systemdNotifier) Ready() { sdNotify(daemon.SdNotifyReady) }
func (systemdNotifier) Stopping() { sdNotify(daemon.SdNotifyStopping) }

func sdNotify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logging.Warn("Bootstrap", "systemd notification %q failed: %v", state, err)
		return
	}
	if sent {
		logging.Debug("Bootstrap", "Sent %q to systemd", state)
	}
}
