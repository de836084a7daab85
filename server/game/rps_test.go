package game

import "testing"

func TestResolveRPSDeterministic(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{RPSRock, RPSScissors, 1},
		{RPSScissors, RPSPaper, 1},
		{RPSPaper, RPSRock, 1},
		{RPSScissors, RPSRock, 2},
		{RPSPaper, RPSScissors, 2},
		{RPSRock, RPSPaper, 2},
		{RPSRock, RPSRock, 0},
		{RPSPaper, RPSPaper, 0},
		{RPSScissors, RPSScissors, 0},
	}

	for _, tc := range cases {
		if got := ResolveRPS(tc.a, tc.b); got != tc.want {
			t.Errorf("ResolveRPS(%s, %s) = %d, esperava %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestValidRPSChoice(t *testing.T) {
	for _, choice := range []string{RPSRock, RPSPaper, RPSScissors} {
		if !ValidRPSChoice(choice) {
			t.Errorf("%s deveria ser válido", choice)
		}
	}
	for _, choice := range []string{"", "lizard", "ROCK"} {
		if ValidRPSChoice(choice) {
			t.Errorf("%q não deveria ser válido", choice)
		}
	}
}

// O sorteio do desempate precisa dar chance real para os dois lados
func TestRandomIndexSpread(t *testing.T) {
	const trials = 400
	counts := [2]int{}
	for i := 0; i < trials; i++ {
		idx := randomIndex(2)
		if idx < 0 || idx > 1 {
			t.Fatalf("índice fora do intervalo: %d", idx)
		}
		counts[idx]++
	}

	// limites bem folgados: só pega um sorteio quebrado de verdade
	for side, n := range counts {
		if n < trials/10 {
			t.Errorf("lado %d saiu só %d vezes em %d", side, n, trials)
		}
	}
}
