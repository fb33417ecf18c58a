// internal/logger/config.go
package logger

type Config struct {
	LogFile     string // пустое значение отключает запись в файл
	MaxSize     int    // мегабайты
	MaxAge      int    // дни
	MaxBackups  int
	Compress    bool
	Development bool
	Pretty      bool // цветной вывод без caller
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		LogFile:     "xrplctl.log",
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: false,
		Pretty:      true,
	}
}
