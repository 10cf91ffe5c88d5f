package get_available_slots

import (
	"time"

	"github.com/gcare-app/GCare-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID   int64     // ID салона
	ServiceID int64     // ID услуги (определяет длительность слота)
	BarberID  *int64    // ID мастера (опционально, nil = салон целиком)
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов.
// Queue-интервалы дня в список не попадают: в них клиенты получают
// номер талона, а не фиксированное время.
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	SalonID   int64     // ID салона
	ServiceID int64     // ID услуги
	Slots     []Slot    // Слоты slot-интервалов дня
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // Свободен ли слот
}
