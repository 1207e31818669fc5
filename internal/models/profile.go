package models

import "time"

// Dataset types recorded on a DataProfile. Extensions that classify as
// document, pdf or folder collapse to DatasetUnknown at persistence time;
// the enum stays closed.
const (
	DatasetText    = "text"
	DatasetImage   = "image"
	DatasetAudio   = "audio"
	DatasetVideo   = "video"
	DatasetCSV     = "CSV"
	DatasetUnknown = "Unknown"
)

// DataProfile is the metadata record for one uploaded dataset. At most one
// type-specific sub-profile row may exist per profile, keyed by the same
// identifier; absence means the profiling step has not run.
type DataProfile struct {
	ID          string    `gorm:"primaryKey;size:255" json:"profile_id"`
	ProfileName string    `gorm:"size:255;not null" json:"profile_name"`
	DatasetName string    `gorm:"size:255;not null" json:"dataset_name"`
	DatasetType string    `gorm:"size:50;not null" json:"dataset_type"`
	FilePath    string    `gorm:"size:500;not null" json:"file_path"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	RecordCount string    `gorm:"size:255;not null;default:0" json:"record_count"`
	ProjectID   string    `gorm:"size:255;not null;index" json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	TextProfile  *TextProfile  `gorm:"foreignKey:ProfileID" json:"text_profile,omitempty"`
	ImageProfile *ImageProfile `gorm:"foreignKey:ProfileID" json:"image_profile,omitempty"`
	AudioProfile *AudioProfile `gorm:"foreignKey:ProfileID" json:"audio_profile,omitempty"`
	VideoProfile *VideoProfile `gorm:"foreignKey:ProfileID" json:"video_profile,omitempty"`
	CSVProfile   *CSVProfile   `gorm:"foreignKey:ProfileID" json:"csv_profile,omitempty"`
	MixedProfile *MixedProfile `gorm:"foreignKey:ProfileID" json:"mixed_profile,omitempty"`
}

// TextProfile holds statistics for text datasets.
type TextProfile struct {
	ProfileID             string  `gorm:"primaryKey;size:255" json:"profile_id"`
	TotalWords            int     `json:"total_words"`
	UniqueWords           int     `json:"unique_words"`
	AverageWordLength     float64 `json:"average_word_length"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
	MostCommonWord        string  `gorm:"size:255" json:"most_common_word"`
	MissingValues         int     `json:"missing_values"`
	LanguageDetected      string  `gorm:"size:100" json:"language_detected"`
}

// ImageProfile holds statistics for image datasets.
type ImageProfile struct {
	ProfileID         string  `gorm:"primaryKey;size:255" json:"profile_id"`
	TotalImages       int     `json:"total_images"`
	AverageResolution string  `gorm:"size:50" json:"average_resolution"`
	DominantColor     string  `gorm:"size:50" json:"dominant_color"`
	AverageFileSize   float64 `json:"average_file_size"`
	ImageFormats      string  `gorm:"size:255" json:"image_formats"`
}

// AudioProfile holds statistics for audio datasets.
type AudioProfile struct {
	ProfileID       string  `gorm:"primaryKey;size:255" json:"profile_id"`
	TotalAudioFiles int     `json:"total_audio_files"`
	AverageDuration float64 `json:"average_duration"`
	SampleRates     string  `gorm:"size:100" json:"sample_rates"`
	AverageBitrate  int     `json:"average_bitrate"`
	FileFormats     string  `gorm:"size:255" json:"file_formats"`
}

// VideoProfile holds statistics for video datasets.
type VideoProfile struct {
	ProfileID              string  `gorm:"primaryKey;size:255" json:"profile_id"`
	TotalVideos            int     `json:"total_videos"`
	AverageDuration        float64 `json:"average_duration"`
	ResolutionDistribution string  `gorm:"size:255" json:"resolution_distribution"`
	FrameRates             string  `gorm:"size:255" json:"frame_rates"`
	FileFormats            string  `gorm:"size:255" json:"file_formats"`
	AverageBitrate         int     `json:"average_bitrate"`
}

// CSVProfile holds statistics for tabular datasets.
type CSVProfile struct {
	ProfileID       string `gorm:"primaryKey;size:255" json:"profile_id"`
	TotalColumns    int    `json:"total_columns"`
	TotalRows       int    `json:"total_rows"`
	ColumnTypes     string `gorm:"type:text" json:"column_types"`
	MissingValues   int    `json:"missing_values"`
	MostCommonValue string `gorm:"type:text" json:"most_common_value"`
	DuplicateRows   int    `json:"duplicate_rows"`
}

// MixedProfile records the detected member types of a mixed-content dataset.
type MixedProfile struct {
	ProfileID     string `gorm:"primaryKey;size:255" json:"profile_id"`
	DetectedTypes string `gorm:"size:255;not null" json:"detected_types"`
}
