package bot

import (
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		name      string
		input     string
		wantCmd   string
		wantArgs  []string
		isCommand bool
	}{
		{"команда с !", "!орбы", "орбы", nil, true},
		{"команда с .", ".колесо", "колесо", nil, true},
		{"команда с /", "/start", "start", nil, true},
		{"регистр приводится", "!ОРБЫ", "орбы", nil, true},
		{"аргументы", "!число 21.03.1990", "число", []string{"21.03.1990"}, true},
		{"два аргумента", "!совместимость 01.01.1990 02.02.1992", "совместимость", []string{"01.01.1990", "02.02.1992"}, true},
		{"пробелы вокруг", "  !спины  ", "спины", nil, true},
		{"обычный текст", "привет всем", "", nil, false},
		{"пустая строка", "", "", nil, false},
		{"только префикс", "!", "", nil, false},
		{"только префикс с пробелом", "! ", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, isCmd := p.ParseCommand(tt.input)
			if isCmd != tt.isCommand {
				t.Fatalf("isCommand = %v, ожидалось %v", isCmd, tt.isCommand)
			}
			if cmd != tt.wantCmd {
				t.Errorf("cmd = %q, ожидалось %q", cmd, tt.wantCmd)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, ожидалось %v", args, tt.wantArgs)
			}
		})
	}
}
