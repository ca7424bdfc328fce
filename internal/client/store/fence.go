package store

import "sync"

// fence защищает коллекцию от гонки перекрывающихся re-fetch запросов.
// Каждый запрос получает монотонный номер; ответ применяется только если
// более новый запрос еще не закоммичен. Поздний ответ старого запроса
// отбрасывается.
type fence struct {
	mu        sync.Mutex
	nextSeq   uint64
	committed uint64
}

// begin выдает номер новому запросу
func (f *fence) begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextSeq++
	return f.nextSeq
}

// commit пытается закоммитить ответ с данным номером.
// Возвращает false, если уже закоммичен более новый.
func (f *fence) commit(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq <= f.committed {
		return false
	}
	f.committed = seq
	return true
}
