package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled  bool                 `mapstructure:"enabled"` // 总开关
	Activity ActivityEventsConfig `mapstructure:"activity"`
	File     FileEventsConfig     `mapstructure:"file"`
	Folder   FolderEventsConfig   `mapstructure:"folder"`
}

// ActivityEventsConfig 审计领域事件开关.
type ActivityEventsConfig struct {
	Recorded bool `mapstructure:"recorded"`
}

// FileEventsConfig 文件领域事件开关.
type FileEventsConfig struct {
	Uploaded   bool `mapstructure:"uploaded"`
	Deleted    bool `mapstructure:"deleted"`
	Moved      bool `mapstructure:"moved"`
	Downloaded bool `mapstructure:"downloaded"`
}

// FolderEventsConfig 文件夹领域事件开关.
type FolderEventsConfig struct {
	Moved   bool `mapstructure:"moved"`
	Deleted bool `mapstructure:"deleted"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	v.SetDefault("events.activity.recorded", true)

	v.SetDefault("events.file.uploaded", true)
	v.SetDefault("events.file.deleted", true)
	v.SetDefault("events.file.moved", false)
	v.SetDefault("events.file.downloaded", false) // 下载事件量可能很大，默认关闭

	v.SetDefault("events.folder.moved", false)
	v.SetDefault("events.folder.deleted", true)
}
