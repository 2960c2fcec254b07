// Package domain declares the operation catalog served by the gateway.
//
// Each entry names one upstream provider function, documents its string
// parameters and source, and becomes a registry.Operation whose call fetches
// the dataset through a provider.Provider. The clock operation is the only
// entry answered locally.
package domain
