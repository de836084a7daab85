package game

import "testing"

func TestBoardWinnerLines(t *testing.T) {
	cases := []struct {
		name  string
		cells [3]int
	}{
		{"linha superior", [3]int{0, 1, 2}},
		{"linha do meio", [3]int{3, 4, 5}},
		{"linha inferior", [3]int{6, 7, 8}},
		{"coluna esquerda", [3]int{0, 3, 6}},
		{"coluna do meio", [3]int{1, 4, 7}},
		{"coluna direita", [3]int{2, 5, 8}},
		{"diagonal principal", [3]int{0, 4, 8}},
		{"diagonal secundária", [3]int{2, 4, 6}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var b Board
			for _, i := range tc.cells {
				b[i] = "X"
			}
			if got := b.Winner(); got != "X" {
				t.Errorf("esperava vencedor X, veio %q", got)
			}
		})
	}
}

func TestBoardNoWinner(t *testing.T) {
	var b Board
	if b.Winner() != "" {
		t.Error("tabuleiro vazio não tem vencedor")
	}

	// duas casas da mesma linha não bastam
	b[0], b[1] = "X", "X"
	if b.Winner() != "" {
		t.Error("linha incompleta não vence")
	}

	// linha completa mas com símbolos misturados
	b[2] = "O"
	if b.Winner() != "" {
		t.Error("linha mista não vence")
	}
}

func TestBoardFullIsDrawWithoutWinner(t *testing.T) {
	// X O X / X O O / O X X — cheio e sem linha fechada
	b := Board{"X", "O", "X", "X", "O", "O", "O", "X", "X"}
	if !b.Full() {
		t.Fatal("tabuleiro deveria estar cheio")
	}
	if b.Winner() != "" {
		t.Fatal("esse tabuleiro não tem vencedor")
	}
}

func TestBoardFreeCells(t *testing.T) {
	var b Board
	if got := len(b.FreeCells()); got != 9 {
		t.Fatalf("esperava 9 casas livres, veio %d", got)
	}

	b[4] = "X"
	free := b.FreeCells()
	if len(free) != 8 {
		t.Fatalf("esperava 8 casas livres, veio %d", len(free))
	}
	for _, i := range free {
		if i == 4 {
			t.Error("casa 4 ocupada apareceu como livre")
		}
	}
}

func TestBoardWire(t *testing.T) {
	var b Board
	b[0] = "X"
	wire := b.Wire()
	if len(wire) != 9 {
		t.Fatalf("esperava 9 posições, veio %d", len(wire))
	}
	if wire[0] == nil || *wire[0] != "X" {
		t.Error("casa ocupada deveria carregar o símbolo")
	}
	if wire[1] != nil {
		t.Error("casa vazia deveria ser null")
	}
}
