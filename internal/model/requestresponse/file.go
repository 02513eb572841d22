package requestresponse

import "vulnshare/internal/model"

// SetStatusRequest : тело запроса на смену статуса модерации
type SetStatusRequest struct {
	Status string `json:"status" example:"approved"`
}

// FileResponse : метаданные одного файла
type FileResponse struct {
	Data *model.FileRecord `json:"data"`
}

// ListFilesResponse : все файлы всех владельцев, без пагинации
type ListFilesResponse struct {
	Data struct {
		Files []*model.FileRecord `json:"files"`
	} `json:"data"`
}

// DownloadResponse : ссылка на содержимое файла
type DownloadResponse struct {
	Data struct {
		URL         string `json:"url"`
		ContentType string `json:"content_type"`
		Filename    string `json:"filename"`
	} `json:"data"`
}
