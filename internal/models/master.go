package models

// City, Locality, JobRole, Skill - справочные данные (только чтение для пользователей)

type City struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	State string `gorm:"size:100" json:"state"`
}

type Locality struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	CityID uint   `gorm:"not null;index" json:"cityId"`
	Name   string `gorm:"size:150;not null" json:"name"`

	City *City `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type JobRole struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:150;not null" json:"name"`
	Category string `gorm:"size:100" json:"category"`
}

type Skill struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleID uint   `gorm:"not null;index" json:"roleId"`
	Name   string `gorm:"size:100;not null" json:"name"`

	Role *JobRole `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE" json:"-"`
}
