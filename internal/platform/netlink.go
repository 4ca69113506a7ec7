package platform

import (
	"sync"
	"time"

	"tinygo.org/x/drivers/netlink"
)

const connectTimeout = 20 * time.Second

// NetlinkRadio adapts a netlink driver (cyw43439, wifinina, ...) to
// the monitor's Radio port. Link state follows the driver's up/down
// notifications, so a silent association loss is visible on the next
// Connected poll.
type NetlinkRadio struct {
	link netlink.Netlinker

	mu   sync.Mutex
	up   bool
	ssid string
}

func NewNetlinkRadio(link netlink.Netlinker) *NetlinkRadio {
	r := &NetlinkRadio{link: link}
	link.NetNotify(r.notify)
	return r
}

func (r *NetlinkRadio) notify(e netlink.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch e {
	case netlink.EventNetUp:
		r.up = true
	case netlink.EventNetDown:
		r.up = false
	}
}

func (r *NetlinkRadio) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.up
}

func (r *NetlinkRadio) Connect(ssid, password string) error {
	err := r.link.NetConnect(&netlink.ConnectParams{
		Ssid:           ssid,
		Passphrase:     password,
		ConnectTimeout: connectTimeout,
	})
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.up = true
	r.ssid = ssid
	r.mu.Unlock()
	return nil
}

func (r *NetlinkRadio) Identity() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ssid
}
