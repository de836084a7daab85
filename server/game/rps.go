package game

import (
	"crypto/rand"
	"math/big"
)

const (
	RPSRock     = "rock"
	RPSPaper    = "paper"
	RPSScissors = "scissors"
)

func ValidRPSChoice(choice string) bool {
	return choice == RPSRock || choice == RPSPaper || choice == RPSScissors
}

// ResolveRPS compara as duas escolhas: 1 se a primeira vence,
// 2 se a segunda vence, 0 em caso de empate
func ResolveRPS(a, b string) int {
	if a == b {
		return 0
	}
	switch a {
	case RPSRock:
		if b == RPSScissors {
			return 1
		}
	case RPSPaper:
		if b == RPSRock {
			return 1
		}
	case RPSScissors:
		if b == RPSPaper {
			return 1
		}
	}
	return 2
}

// randomIndex sorteia um índice em [0, n) com crypto/rand
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
