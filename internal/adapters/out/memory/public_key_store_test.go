package memory_test

import (
	"sync"
	"testing"

	"delivery-service/internal/adapters/out/memory"

	"github.com/stretchr/testify/assert"
)

func TestPublicKeyStore(t *testing.T) {
	store := memory.NewPublicKeyStore()
	assert.Empty(t, store.Get())

	store.Set("abc")
	assert.Equal(t, "abc", store.Get())

	store.Set("def")
	assert.Equal(t, "def", store.Get())
}

func TestPublicKeyStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewPublicKeyStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				store.Set("even")
			} else {
				store.Set("odd")
			}
		}()
		go func() {
			defer wg.Done()
			_ = store.Get()
		}()
	}
	wg.Wait()

	assert.Contains(t, []string{"even", "odd"}, store.Get())
}
