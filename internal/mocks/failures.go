package mocks

import "sync"

// failures хранит ошибки, которые мок должен вернуть вместо вызова хранилища
type failures struct {
	mu    sync.Mutex
	errs  map[string]error
	calls map[string]int
}

func (f *failures) FailOn(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errs == nil {
		f.errs = make(map[string]error)
	}
	f.errs[method] = err
}

// Calls - сколько раз вызывался метод (включая неудачные вызовы)
func (f *failures) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *failures) check(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
	return f.errs[method]
}
