package core

// 评分数据的 key 命名：两个互为转置的视图。
//
//	{prefix}:user:{userID}:items   用户 → {物品: 评分}
//	{prefix}:item:{itemID}:scores  物品 → {用户: 评分}
//
// 每次评分写入同时更新两侧（见 rating.Recorder）；
// 派生集合（similars / suggestions / tmp）挂在 run 级命名空间下，
// 见 RecommendContext。

// UserItemsKey 返回用户评分集合（by-user 视图）的 key。
func UserItemsKey(prefix, userID string) string {
	return prefix + ":user:" + userID + ":items"
}

// ItemScoresKey 返回物品评分集合（by-item 视图）的 key。
func ItemScoresKey(prefix, itemID string) string {
	return prefix + ":item:" + itemID + ":scores"
}
