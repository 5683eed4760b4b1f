package entity

type User struct {
	Base

	Name string `gorm:"index:idx_users_name,unique"`
}
