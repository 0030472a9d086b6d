/*
Package app contains the ABCI application plumbing: the commit store with
its check and deliver caches, the message router, the decorator chain and
the query dispatch. Extensions only provide handlers, initializers and
query handlers; this package glues them to tendermint.
*/
package app
