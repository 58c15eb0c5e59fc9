package models

// CounterModel backs the sequence allocator. Rows are created on first use
// and never reset.
type CounterModel struct {
	Name string `gorm:"primaryKey;size:64"`
	Next int64  `gorm:"not null;default:0"`
}

func (CounterModel) TableName() string {
	return "counters"
}
