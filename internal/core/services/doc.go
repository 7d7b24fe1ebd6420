// Package services holds the knowledge base logic behind the driving ports.
//
// A Pipeline bundles the scraper, chunker, embedder and vector store for one
// session. Collector, Indexer, QueryService and KnowledgeBase are the stages
// built on it; SettingsService and RunHistory work without one.
package services
