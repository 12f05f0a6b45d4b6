// QLDash is the query-definition layer of a multi-backend time-series
// dashboard.  A query built visually, part by part, is kept well formed by
// builder rules and compiled into the vocabulary of a backend:
//
//   - package influxql renders select/group-by/tag-filter models to InfluxQL
//   - package generators/elasticsearch/querydef decides which metric and
//     pipeline aggregations a server version and a metric selection allow
//   - package generators/elasticsearch/esgen builds the matching aggs DSL
package qldash
