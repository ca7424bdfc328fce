package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминальный ввод-вывод CLI витрины,
// чтобы команды можно было тестировать без реального терминала
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput печатает prompt и читает строку, обрезая пробелы
	ReadInput(prompt string) (string, error)
	// ReadPassword печатает prompt и читает строку без эха
	ReadPassword(prompt string) (string, error)
}
