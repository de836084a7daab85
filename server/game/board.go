package game

// Board são as 9 casas do jogo da velha, "" = casa vazia
type Board [9]string

// As 8 linhas clássicas: 3 horizontais, 3 verticais e 2 diagonais
var winningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

func (b *Board) Clear() {
	*b = Board{}
}

func (b Board) Full() bool {
	for _, cell := range b {
		if cell == "" {
			return false
		}
	}
	return true
}

// Winner devolve o símbolo que fechou uma linha, ou "" se ninguém fechou
func (b Board) Winner() string {
	for _, line := range winningLines {
		a, m, c := line[0], line[1], line[2]
		if b[a] != "" && b[a] == b[m] && b[a] == b[c] {
			return b[a]
		}
	}
	return ""
}

func (b Board) FreeCells() []int {
	free := []int{}
	for i, cell := range b {
		if cell == "" {
			free = append(free, i)
		}
	}
	return free
}

// Wire converte o tabuleiro para o formato do cliente, com null nas casas vazias
func (b Board) Wire() []*string {
	out := make([]*string, len(b))
	for i := range b {
		if b[i] != "" {
			cell := b[i]
			out[i] = &cell
		}
	}
	return out
}
