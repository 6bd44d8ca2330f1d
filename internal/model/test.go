package model

// Test 聚合根：题目与选项归属于测试，随测试一起加载与删除
// swagger:model Test
type Test struct {
	BaseModel
	Name       string     `gorm:"size:1000;not null" json:"name"`
	CategoryID uint       `gorm:"index;not null" json:"categoryId"`
	Category   *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	Questions  []Question `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}
