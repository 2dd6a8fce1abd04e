package tracker

import (
	"sync"
)

// MemoryStore keeps one key-value namespace per device id. It stands in
// for the browser-local storage of each reader's device; the server keys
// namespaces on the device identifier the client sends.
type MemoryStore struct {
	mu      sync.Mutex
	devices map[string]map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{devices: make(map[string]map[string]string)}
}

// Device returns the DeviceStore view for one device id
func (m *MemoryStore) Device(id string) DeviceStore {
	return &deviceView{store: m, device: id}
}

type deviceView struct {
	store  *MemoryStore
	device string
}

func (d *deviceView) Get(key string) string {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	return d.store.devices[d.device][key]
}

func (d *deviceView) Set(key, value string) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	ns, ok := d.store.devices[d.device]
	if !ok {
		ns = make(map[string]string)
		d.store.devices[d.device] = ns
	}
	ns[key] = value
}
