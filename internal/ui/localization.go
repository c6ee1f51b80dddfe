package ui

import (
	"fmt"

	"github.com/ytget/imgqueue/internal/queue"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyUpload            = "upload"
	KeyUploadMore        = "upload_more"
	KeyConvert           = "convert"
	KeyFormat            = "format"
	KeyFileName          = "file_name"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyOutputDirectory   = "output_directory"
	KeyDefaultFormat     = "default_format"
	KeyRevealOnComplete  = "reveal_on_complete"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyDropHere          = "drop_here"
	KeyRemove            = "remove"
	KeyShowOutput        = "show_output"
	KeyOpen              = "open"
	KeyReveal            = "reveal"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyErrorReadingFile  = "error_reading_file"
	KeyConverting        = "converting"
	KeyBatchDone         = "batch_done"
	KeyNoPreview         = "no_preview"
	KeyAlertNoValidFiles = "alert_no_valid_files"
	KeyAlertEmptyQueue   = "alert_empty_queue"
	KeyAlertNameTooLong  = "alert_name_too_long"
	KeyAlertInvalidImage = "alert_invalid_image"
	KeyPickImages        = "pick_images"
	KeyAddSelected       = "add_selected"
	KeySelectAll         = "select_all"
	KeyParentFolder      = "parent_folder"
	KeySelectedCount     = "selected_count"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// AlertText returns the localized message of a controller alert
func (l *Localization) AlertText(alert queue.Alert) string {
	switch alert.Kind {
	case queue.AlertNoValidFiles:
		return l.GetText(KeyAlertNoValidFiles)
	case queue.AlertEmptyQueue:
		return l.GetText(KeyAlertEmptyQueue)
	case queue.AlertNameTooLong:
		return fmt.Sprintf(l.GetText(KeyAlertNameTooLong), queue.MaxNameLength)
	case queue.AlertInvalidImage:
		return fmt.Sprintf(l.GetText(KeyAlertInvalidImage), alert.Position)
	default:
		return alert.Message()
	}
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Image Queue Converter",
		KeyUpload:            "Upload image(s)",
		KeyUploadMore:        "Upload more image(s)",
		KeyConvert:           "Convert",
		KeyFormat:            "Format",
		KeyFileName:          "File name (optional)",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyOutputDirectory:   "Output Directory",
		KeyDefaultFormat:     "Default Format",
		KeyRevealOnComplete:  "Open output folder when a batch finishes",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyDropHere:          "Drop images here",
		KeyRemove:            "Remove",
		KeyShowOutput:        "Output folder",
		KeyOpen:              "open",
		KeyReveal:            "show",
		KeyErrorOpeningFile:  "Error opening file",
		KeyErrorReadingFile:  "Could not read file",
		KeyConverting:        "Converting %d image(s)...",
		KeyBatchDone:         "Converted %d of %d image(s)",
		KeyNoPreview:         "Upload or drop images to preview them here",
		KeyAlertNoValidFiles: "Please drop valid PNG, JPG/JPEG or WEBP image files only.",
		KeyAlertEmptyQueue:   "Please upload/drag & drop one or more images of type (PNG, JPG/JPEG, WEBP).",
		KeyAlertNameTooLong:  "There is a %d-character limit on filenames. Please shorten the name.",
		KeyAlertInvalidImage: "Error: The image with ID %d is invalid.",
		KeyPickImages:        "Select images",
		KeyAddSelected:       "Add selected",
		KeySelectAll:         "Select all",
		KeyParentFolder:      "Up",
		KeySelectedCount:     "%d selected",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Конвертер изображений",
		KeyUpload:            "Загрузить изображения",
		KeyUploadMore:        "Загрузить ещё",
		KeyConvert:           "Конвертировать",
		KeyFormat:            "Формат",
		KeyFileName:          "Имя файла (необязательно)",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyOutputDirectory:   "Папка для результатов",
		KeyDefaultFormat:     "Формат по умолчанию",
		KeyRevealOnComplete:  "Открывать папку после конвертации",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки сохранены!",
		KeyDropHere:          "Перетащите изображения сюда",
		KeyRemove:            "Удалить",
		KeyShowOutput:        "Папка с результатами",
		KeyOpen:              "открыть",
		KeyReveal:            "показать",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyErrorReadingFile:  "Не удалось прочитать файл",
		KeyConverting:        "Конвертация изображений: %d...",
		KeyBatchDone:         "Сконвертировано %d из %d",
		KeyNoPreview:         "Загрузите или перетащите изображения для просмотра",
		KeyAlertNoValidFiles: "Перетащите только файлы PNG, JPG/JPEG или WEBP.",
		KeyAlertEmptyQueue:   "Загрузите или перетащите одно или несколько изображений (PNG, JPG/JPEG, WEBP).",
		KeyAlertNameTooLong:  "Имя файла не может быть длиннее %d символов. Сократите имя.",
		KeyAlertInvalidImage: "Ошибка: изображение с номером %d повреждено.",
		KeyPickImages:        "Выбор изображений",
		KeyAddSelected:       "Добавить выбранные",
		KeySelectAll:         "Выбрать все",
		KeyParentFolder:      "Вверх",
		KeySelectedCount:     "Выбрано: %d",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Conversor de Imagens",
		KeyUpload:            "Enviar imagem(ns)",
		KeyUploadMore:        "Enviar mais imagem(ns)",
		KeyConvert:           "Converter",
		KeyFormat:            "Formato",
		KeyFileName:          "Nome do arquivo (opcional)",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyOutputDirectory:   "Diretório de Saída",
		KeyDefaultFormat:     "Formato Padrão",
		KeyRevealOnComplete:  "Abrir a pasta de saída ao terminar",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyDropHere:          "Solte as imagens aqui",
		KeyRemove:            "Remover",
		KeyShowOutput:        "Pasta de saída",
		KeyOpen:              "abrir",
		KeyReveal:            "mostrar",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
		KeyErrorReadingFile:  "Não foi possível ler o arquivo",
		KeyConverting:        "Convertendo %d imagem(ns)...",
		KeyBatchDone:         "Convertidas %d de %d imagem(ns)",
		KeyNoPreview:         "Envie ou solte imagens para visualizá-las aqui",
		KeyAlertNoValidFiles: "Solte apenas arquivos de imagem PNG, JPG/JPEG ou WEBP válidos.",
		KeyAlertEmptyQueue:   "Envie ou arraste uma ou mais imagens do tipo (PNG, JPG/JPEG, WEBP).",
		KeyAlertNameTooLong:  "O nome do arquivo tem limite de %d caracteres. Encurte o nome.",
		KeyAlertInvalidImage: "Erro: a imagem com ID %d é inválida.",
		KeyPickImages:        "Selecionar imagens",
		KeyAddSelected:       "Adicionar selecionadas",
		KeySelectAll:         "Selecionar tudo",
		KeyParentFolder:      "Acima",
		KeySelectedCount:     "%d selecionada(s)",
	}
}
