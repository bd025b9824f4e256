package get_available_slots

import "time"

// Request модель запроса доступных слотов
type Request struct {
	Page int // Смещение недели от текущей: 0 = текущая неделя
}

// Response модель ответа со свободными слотами недели.
// Слоты отсортированы по возрастанию, без дубликатов.
type Response struct {
	Page      int
	WeekStart time.Time
	WeekEnd   time.Time
	Slots     []time.Time
	Count     int

	// Пагинация: листание по неделям
	HasPrevious  bool
	PreviousPage *int
	NextPage     int
	HasMore      bool
}
