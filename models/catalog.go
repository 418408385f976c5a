package models

// ItemType представляет тип элемента сети FTTH (OLT, опора, ODP и т.д.).
// Набор типов расширяется только добавлением новых строк справочника.
type ItemType struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null;type:varchar(50)"`
	Icon  string `json:"icon" gorm:"type:varchar(50)"`
	Color string `json:"color" gorm:"type:varchar(20)"`
}

// TableName задает имя таблицы для модели ItemType
func (ItemType) TableName() string {
	return "item_types"
}

// TubeColor представляет цвет тубы/жилы оптического кабеля
type TubeColor struct {
	ID        uint   `json:"id" gorm:"primarykey"`
	ColorName string `json:"color_name" gorm:"uniqueIndex;not null;type:varchar(50)"`
	HexCode   string `json:"hex_code" gorm:"type:varchar(7)"`
}

// TableName задает имя таблицы для модели TubeColor
func (TubeColor) TableName() string {
	return "tube_colors"
}

// SplitterType представляет тип оптического сплиттера
type SplitterType struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Ratio string `json:"ratio" gorm:"uniqueIndex;not null;type:varchar(10)"` // 1:2, 1:4, ...
	Ports int    `json:"ports" gorm:"not null"`
}

// TableName задает имя таблицы для модели SplitterType
func (SplitterType) TableName() string {
	return "splitter_types"
}

// DefaultItemTypes — справочник типов элементов сети, загружается при миграции
var DefaultItemTypes = []ItemType{
	{Name: "OLT", Icon: "fas fa-server", Color: "#dc3545"},
	{Name: "Pole", Icon: "fas fa-grip-lines-vertical", Color: "#6c757d"},
	{Name: "ODP Pole", Icon: "fas fa-project-diagram", Color: "#007bff"},
	{Name: "ODC Pole", Icon: "fas fa-network-wired", Color: "#28a745"},
	{Name: "Joint Closure", Icon: "fas fa-box", Color: "#ffc107"},
	{Name: "Customer", Icon: "fas fa-home", Color: "#17a2b8"},
	{Name: "Server", Icon: "fas fa-database", Color: "#343a40"},
}

// DefaultTubeColors — стандартные 12 цветов туб оптического кабеля
var DefaultTubeColors = []TubeColor{
	{ColorName: "Blue", HexCode: "#0000FF"},
	{ColorName: "Orange", HexCode: "#FFA500"},
	{ColorName: "Green", HexCode: "#008000"},
	{ColorName: "Brown", HexCode: "#A52A2A"},
	{ColorName: "Slate", HexCode: "#708090"},
	{ColorName: "White", HexCode: "#FFFFFF"},
	{ColorName: "Red", HexCode: "#FF0000"},
	{ColorName: "Black", HexCode: "#000000"},
	{ColorName: "Yellow", HexCode: "#FFFF00"},
	{ColorName: "Violet", HexCode: "#8A2BE2"},
	{ColorName: "Pink", HexCode: "#FFC0CB"},
	{ColorName: "Aqua", HexCode: "#00FFFF"},
}

// DefaultSplitterTypes — стандартные коэффициенты деления сплиттеров
var DefaultSplitterTypes = []SplitterType{
	{Ratio: "1:2", Ports: 2},
	{Ratio: "1:4", Ports: 4},
	{Ratio: "1:8", Ports: 8},
	{Ratio: "1:16", Ports: 16},
	{Ratio: "1:32", Ports: 32},
	{Ratio: "1:64", Ports: 64},
}
