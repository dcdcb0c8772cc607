package chess

// Perft 统计 depth 层内的叶子数，用来核对走法生成
func Perft(b *Board, toMove Side, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	b.CalcTeamValidMoves(toMove)
	moves := b.TeamMoves(toMove)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := b.Clone()
		child.ExecuteMove(m, ExecFlags{})
		child.SetEnPassant(m)
		nodes += Perft(child, toMove.Other(), depth-1)
	}
	return nodes
}

// Divide 按根着法拆分 Perft 结果，键为 UCI 字符串
func Divide(b *Board, toMove Side, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	b.CalcTeamValidMoves(toMove)
	for _, m := range b.TeamMoves(toMove) {
		child := b.Clone()
		child.ExecuteMove(m, ExecFlags{})
		child.SetEnPassant(m)
		out[m.String()] = Perft(child, toMove.Other(), depth-1)
	}
	return out
}
