package transfer

type SettingsUpdate struct {
	Persona      string `json:"persona" validate:"omitempty,oneof=general student worker night_owl"`
	VideosPerDay int    `json:"videos_per_day" validate:"omitempty,gt=0"`
	CustomHours  []int  `json:"custom_hours" validate:"omitempty,dive,gte=0,lte=23"`
	Mode         string `json:"mode" validate:"omitempty,oneof=solo network"`
}
