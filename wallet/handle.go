package wallet

import (
	"fmt"
	"sync"

	"github.com/freewebmovement/zz-account/config"
)

// Handle is an opaque reference to a credential held by a Registry. Zero is never issued.
type Handle uint64

// Registry owns credentials on behalf of a host runtime that cannot hold Go pointers.
// Every handle returned by a Create call must be passed to Destroy exactly once.
type Registry struct {
	cfg     *config.Config
	mu      sync.Mutex
	next    Handle
	entries map[Handle]*Credential
}

func NewRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Registry{
		cfg:     cfg,
		entries: make(map[Handle]*Credential),
	}
}

func (r *Registry) put(c *Credential) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.entries[r.next] = c
	return r.next
}

// Create registers a credential generated from a fresh phrase.
func (r *Registry) Create() (Handle, error) {
	c, err := RandomCredential(r.cfg)
	if err != nil {
		return 0, err
	}
	return r.put(c), nil
}

// CreateFromJSON registers a credential decoded from its persisted form.
func (r *Registry) CreateFromJSON(data string) (Handle, error) {
	c, err := FromJSON([]byte(data), r.cfg)
	if err != nil {
		return 0, err
	}
	return r.put(c), nil
}

func (r *Registry) Get(h Handle) (*Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.entries[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return c, nil
}

func (r *Registry) Prefix(h Handle) (string, error) {
	c, err := r.Get(h)
	if err != nil {
		return "", err
	}
	return c.Prefix(), nil
}

func (r *Registry) String(h Handle) (string, error) {
	c, err := r.Get(h)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func (r *Registry) PublicKeyHex(h Handle) (string, error) {
	c, err := r.Get(h)
	if err != nil {
		return "", err
	}
	return c.PublicKeyHex(), nil
}

func (r *Registry) PrivateKeyHex(h Handle) (string, error) {
	c, err := r.Get(h)
	if err != nil {
		return "", err
	}
	return c.PrivateKeyHex(), nil
}

// ToJSON returns the pretty-printed persisted form.
func (r *Registry) ToJSON(h Handle) (string, error) {
	c, err := r.Get(h)
	if err != nil {
		return "", err
	}
	data, err := c.ToJSON(true)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Destroy releases h and zeroes its private key. Unknown and already destroyed handles fail.
func (r *Registry) Destroy(h Handle) error {
	r.mu.Lock()
	c, ok := r.entries[h]
	delete(r.entries, h)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	c.Wipe()
	return nil
}

// Len reports the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
