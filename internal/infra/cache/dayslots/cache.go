package dayslots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
	"github.com/m04kA/SMC-SchoolBooking/pkg/types"
)

const keyPrefix = "dayslots"

// cachedSlot формат хранения одной отметки в Redis
type cachedSlot struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

// Cache кеш дневной доступности инструктора по ключу (дата, инструктор)
type Cache struct {
	client RedisClient
	ttl    time.Duration
}

// NewCache создает кеш; ttl <= 0 означает хранение без истечения
func NewCache(client RedisClient, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает закешированную карту дня. ok=false при промахе.
func (c *Cache) Get(ctx context.Context, date time.Time, instructorID int64) (domain.DaySlotMap, bool, error) {
	raw, err := c.client.Get(ctx, key(date, instructorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DaySlotMap{}, false, nil
	}
	if err != nil {
		return domain.DaySlotMap{}, false, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var stored []cachedSlot
	if err := json.Unmarshal(raw, &stored); err != nil {
		return domain.DaySlotMap{}, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	slots := make([]domain.DaySlot, 0, len(stored))
	for _, s := range stored {
		slots = append(slots, domain.DaySlot{Time: types.TimeString(s.Time), Status: domain.SlotStatus(s.Status)})
	}

	dayMap, err := domain.NewDaySlotMap(slots)
	if err != nil {
		return domain.DaySlotMap{}, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return dayMap, true, nil
}

// Set сохраняет карту дня
func (c *Cache) Set(ctx context.Context, date time.Time, instructorID int64, dayMap domain.DaySlotMap) error {
	slots := dayMap.Slots()
	stored := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		stored = append(stored, cachedSlot{Time: s.Time.String(), Status: string(s.Status)})
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCache, err)
	}

	if err := c.client.Set(ctx, key(date, instructorID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}
	return nil
}

// Invalidate удаляет карту дня, например после бронирования занятия у инструктора
func (c *Cache) Invalidate(ctx context.Context, date time.Time, instructorID int64) error {
	if err := c.client.Del(ctx, key(date, instructorID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}

func key(date time.Time, instructorID int64) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, instructorID, date.Format(domain.DateFormat))
}
