// Package iocache provides the durable stores behind the engine: the dataset
// cache and the saved-settings store.
package iocache

import (
	"sync"

	"github.com/liushen/calheat/internal/contract"
)

// CacheStoreManager manages the durable store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	cache        contract.CacheStore
	settings     contract.SettingsStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetCacheStore returns the dataset CacheStore.
func (mgr *CacheStoreManager) GetCacheStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.cache
}

// GetSettingsStore returns the SettingsStore.
func (mgr *CacheStoreManager) GetSettingsStore() contract.SettingsStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.settings
}
