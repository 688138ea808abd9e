// Package app provides the vote engine and the application service layer.
//
// Registry, AdmissionPolicy, TrendClassifier, CloudWeightMapper and Project are the core;
// Service orchestrates submissions, votes, board refreshes and leaderboard sharing on top of them.
// Depends on domain interfaces, not concrete adapters.
package app
