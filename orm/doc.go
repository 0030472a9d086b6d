/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of model.
* Models are stored under a primary key, joined with the bucket prefix.
* Every bucket can be exposed as an ABCI query path.
*/
package orm
