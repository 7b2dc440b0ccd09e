package constant

import "equeue-slip-bot/internal/entity"

const (
	CommandStart  = "start"
	CommandCancel = "cancel"
)

// Menu button labels. They arrive back as plain text when tapped.
const (
	MenuCreateDocument      = "Создать документ"
	MenuChangeDate          = "Изменить дату"
	MenuChangeTime          = "Изменить время"
	MenuChangeBookingNumber = "Изменить номер бронирования"
	MenuChangeCheckpoint    = "Изменить пункт пропуска"
	MenuChangeVehicleNumber = "Изменить номер транспорта"
	MenuChangeTrailerNumber = "Изменить номер прицепа"
	MenuChangeCountry       = "Изменить страну регистрации"
)

// MenuLayout is the keyboard shown with every prompt that carries the menu.
var MenuLayout = [][]string{
	{MenuCreateDocument},
	{MenuChangeDate, MenuChangeTime},
	{MenuChangeBookingNumber, MenuChangeCheckpoint},
	{MenuChangeVehicleNumber, MenuChangeTrailerNumber},
	{MenuChangeCountry},
}

// MenuFields maps each "change" button to the field it edits.
var MenuFields = map[string]entity.FormField{
	MenuChangeDate:          entity.FieldDate,
	MenuChangeTime:          entity.FieldTimeRange,
	MenuChangeBookingNumber: entity.FieldBookingNumber,
	MenuChangeCheckpoint:    entity.FieldCheckpoint,
	MenuChangeVehicleNumber: entity.FieldVehicleNumber,
	MenuChangeTrailerNumber: entity.FieldTrailerNumber,
	MenuChangeCountry:       entity.FieldCountry,
}

const (
	WelcomeText = "Добро пожаловать! Этот бот создает выписки из системы электронной очереди.\n\n" +
		"Вы можете создать документ с текущими настройками или изменить параметры."
	ArtifactCaption  = "Вот ваш документ. Используйте меню для создания нового документа или изменения параметров."
	CancelText       = "Операция отменена. Для начала работы используйте /start"
	UnrecognizedText = "Пожалуйста, выберите действие в меню."
	RenderFailedText = "Не удалось создать документ. Попробуйте еще раз."
	InvalidInputText = "Некорректное значение. Попробуйте еще раз."
)

var FieldPrompts = map[entity.FormField]string{
	entity.FieldDate:          "Введите новую дату в формате ДД.ММ.ГГГГ (например, 04.03.2025):",
	entity.FieldTimeRange:     "Введите новое время в формате ЧЧ:ММ-ЧЧ:ММ (например, 21:00-22:00):",
	entity.FieldBookingNumber: "Введите новый номер бронирования (например, A334BECF0368C):",
	entity.FieldCheckpoint:    "Введите новый пункт пропуска (например, Нур Жолы - Хоргос):",
	entity.FieldVehicleNumber: "Введите новый номерной знак транспорта (например, 931AFY13):",
	entity.FieldTrailerNumber: "Введите новый номерной знак прицепа (например, 97AGJ13):",
	entity.FieldCountry:       "Введите новую страну регистрации (например, Казахстан):",
}

// FieldConfirmations take the stored value as their only verb.
var FieldConfirmations = map[entity.FormField]string{
	entity.FieldDate:          "Дата изменена на %s",
	entity.FieldTimeRange:     "Время изменено на %s",
	entity.FieldBookingNumber: "Номер бронирования изменен на %s",
	entity.FieldCheckpoint:    "Пункт пропуска изменен на %s",
	entity.FieldVehicleNumber: "Номерной знак транспорта изменен на %s",
	entity.FieldTrailerNumber: "Номерной знак прицепа изменен на %s",
	entity.FieldCountry:       "Страна регистрации изменена на %s",
}

// FieldErrors only covers fields whose validator can reject input.
var FieldErrors = map[entity.FormField]string{
	entity.FieldDate:      "Некорректный формат даты. Пожалуйста, используйте формат ДД.ММ.ГГГГ (например, 04.03.2025).",
	entity.FieldTimeRange: "Некорректный формат времени. Пожалуйста, используйте формат ЧЧ:ММ-ЧЧ:ММ (например, 21:00-22:00).",
}
