package impact

// AggregateUserImpact folds a user's transactions into cumulative totals.
//
// Transactions without an impact record contribute nothing to the sums but
// still count toward TotalTransactions. Sums are rounded to two decimals;
// TreesEquivalent and CarsOffRoadDays are derived from the unrounded CO2 sum.
// An empty or nil slice yields a zero summary.
func AggregateUserImpact(txns []Transaction) UserImpactSummary {
	acc := NewAccumulator()
	acc.Add(txns...)
	return acc.User()
}

// AggregateCommunityImpact folds the platform-wide transaction set into
// global totals and a leaderboard of the top donors by waste prevented.
//
// Every transaction counts toward TotalTransactions, and every distinct donor
// (including an empty donor ID) toward TotalUsers. TopDonors holds at most
// TopDonorLimit entries; donors with equal waste keep their first-seen order.
// TreesEquivalent is derived from the rounded global CO2 total.
func AggregateCommunityImpact(txns []Transaction) CommunityReport {
	acc := NewAccumulator()
	acc.Add(txns...)
	return acc.Community()
}
