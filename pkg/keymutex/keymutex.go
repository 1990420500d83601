// Package keymutex реализует мьютекс по ключу: разные ключи не блокируют друг друга
package keymutex

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// KeyMutex набор мьютексов, создаваемых по требованию и удаляемых после последнего Unlock
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

// New создает пустой KeyMutex
func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*entry)}
}

// Lock захватывает ключ и возвращает функцию освобождения
func (k *KeyMutex) Lock(key string) func() {
	unlock, _ := k.LockContext(context.Background(), key)
	return unlock
}

// LockContext захватывает ключ, ожидание прерывается отменой контекста
func (k *KeyMutex) LockContext(ctx context.Context, key string) (func(), error) {
	e := k.acquire(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		k.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			k.release(key, e)
		})
	}, nil
}

// Len возвращает число ключей, которые сейчас удерживаются или ожидаются
func (k *KeyMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}

func (k *KeyMutex) acquire(key string) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		k.locks[key] = e
	}
	e.refs++
	return e
}

func (k *KeyMutex) release(key string, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
}
