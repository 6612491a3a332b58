package schema

import "time"

// Todo represents the todos table
type Todo struct {
	// ID is a uuid assigned by the service
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// OwnerAddress is the checksummed address of the wallet owning the todo
	OwnerAddress string    `gorm:"column:owner_address;not null;type:text;index:idx_todos_owner_completed"`
	Title        string    `gorm:"column:title;not null;type:text"`
	Description  string    `gorm:"column:description;not null;default:'';type:text"`
	DueDate      time.Time `gorm:"column:due_date;not null;type:timestamptz"`
	Priority     string    `gorm:"column:priority;not null;type:text"`
	Completed    bool      `gorm:"column:completed;not null;default:false;index:idx_todos_owner_completed"`
	// CompletedAt is set when the todo is marked completed
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Todo model
func (Todo) TableName() string {
	return "todos"
}
